// Copyright 2025 The Agentry Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package execute

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentry",
		Subsystem: "executor",
		Name:      "operations_executed",
		Help:      "Number of operations applied",
	}, []string{"operation"})
	mRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentry",
		Subsystem: "executor",
		Name:      "operations_rejected",
		Help:      "Number of operations rejected",
	}, []string{"operation"})
)
