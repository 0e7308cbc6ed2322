// Package metrics reports Ember app build durations to InfluxDB.
package metrics

import (
	"context"
	"time"

	"github.com/frontside/embersite/kernel/model"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultMeasurement = "ember_build"

// InfluxObserver writes one point per build. Write failures are logged and
// never fail the build.
type InfluxObserver struct {
	client      influxdb2.Client
	writer      api.WriteAPIBlocking
	measurement string
}

func NewInfluxObserver(cfg *model.InfluxConfig) (*InfluxObserver, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, errors.New("influx metrics require 'metrics.influx.url'")
	}
	client := influxdb2.NewClient(cfg.Url, cfg.Token)
	return NewInfluxObserverWithWriter(client, client.WriteAPIBlocking(cfg.Org, cfg.Bucket), cfg.Measurement), nil
}

func NewInfluxObserverWithWriter(client influxdb2.Client, writer api.WriteAPIBlocking, measurement string) *InfluxObserver {
	if measurement == "" {
		measurement = defaultMeasurement
	}
	return &InfluxObserver{client: client, writer: writer, measurement: measurement}
}

func (o *InfluxObserver) BuildFinished(app *model.App, duration time.Duration, err error) {
	point := o.point(app, duration, err, time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if werr := o.writer.WritePoint(ctx, point); werr != nil {
		logrus.WithError(werr).Warnf("unable to record build metrics for [%s]", app.Basename())
	}
}

func (o *InfluxObserver) point(app *model.App, duration time.Duration, err error, ts time.Time) *write.Point {
	status := "success"
	if err != nil {
		status = "failure"
	}
	return influxdb2.NewPoint(o.measurement,
		map[string]string{
			"app":    app.Basename(),
			"name":   app.Label(),
			"status": status,
		},
		map[string]interface{}{
			"duration_ms": duration.Milliseconds(),
		},
		ts)
}

func (o *InfluxObserver) Close() {
	if o.client != nil {
		o.client.Close()
	}
}
