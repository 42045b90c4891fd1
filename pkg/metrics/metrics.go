/*
 * Copyright 2022 CECTC, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cectc/dbcli/pkg/constant"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var (
	NativeCallCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dbcli",
		Subsystem: "native",
		Name:      "call_count",
		Help:      "native call count",
	}, []string{"datasource", "call", "return"})

	ExecuteTimer = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dbcli",
		Subsystem: "statement",
		Name:      "execute_timer",
		Help:      "statement execute timer",
	}, []string{"datasource", "kind", "status"})

	BoundRowsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dbcli",
		Subsystem: "statement",
		Name:      "bound_rows",
		Help:      "parameter rows sent to the server",
	}, []string{"datasource"})

	FetchedRowsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dbcli",
		Subsystem: "cursor",
		Name:      "fetched_rows",
		Help:      "rows fetched from result sets",
	}, []string{"datasource"})
)

func init() {
	prometheus.MustRegister(NativeCallCounter)
	prometheus.MustRegister(ExecuteTimer)
	prometheus.MustRegister(BoundRowsCounter)
	prometheus.MustRegister(FetchedRowsCounter)
}

// Collector labels the metrics of one data source. A nil Collector records nothing.
type Collector struct {
	dataSource string
}

func NewCollector(dataSource string) *Collector {
	return &Collector{dataSource: dataSource}
}

func (c *Collector) ObserveCall(call string, ret constant.Return) {
	if c == nil {
		return
	}
	NativeCallCounter.WithLabelValues(c.dataSource, call, ret.String()).Inc()
}

func (c *Collector) ObserveExecute(kind constant.StatementKind, start time.Time, err error) {
	if c == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}
	ExecuteTimer.WithLabelValues(c.dataSource, kind.String(), status).Observe(time.Since(start).Seconds())
}

func (c *Collector) AddBound(rows int) {
	if c == nil || rows <= 0 {
		return
	}
	BoundRowsCounter.WithLabelValues(c.dataSource).Add(float64(rows))
}

func (c *Collector) AddFetched(rows int) {
	if c == nil || rows <= 0 {
		return
	}
	FetchedRowsCounter.WithLabelValues(c.dataSource).Add(float64(rows))
}
