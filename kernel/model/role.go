package model

import (
	"fmt"
	"strings"
)

// Role is one of the four bundles every sub-application build produces.
type Role int

const (
	VendorStyle Role = iota
	AppStyle
	VendorScript
	AppScript
)

// Roles lists every role in publish order.
var Roles = []Role{VendorStyle, AppStyle, VendorScript, AppScript}

var roleNames = map[Role]string{
	VendorStyle:  "vendor style",
	AppStyle:     "app style",
	VendorScript: "vendor script",
	AppScript:    "app script",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role '%s'", s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

func (r Role) IsVendor() bool {
	return r == VendorStyle || r == VendorScript
}

func (r Role) Extension() string {
	if r == VendorStyle || r == AppStyle {
		return "css"
	}
	return "js"
}

// Pattern is the file name glob the role's bundle must match. Vendor bundles
// use a fixed prefix; app bundles are prefixed with the declared package name
// because that is what the build fingerprints.
func (r Role) Pattern(declaredName string) string {
	prefix := "vendor"
	if !r.IsVendor() {
		prefix = escapeGlob(declaredName)
	}
	return prefix + "*." + r.Extension()
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}
