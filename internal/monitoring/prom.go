// Copyright 2024 Open Government Forms.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ApplicationsSubmittedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "license_apply_applications_submitted_amount",
	Help: "The total number of successfully submitted license applications",
})

var StatusTransitionsAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "license_apply_status_transitions_amount",
	Help: "The total number of application status transitions, by target status",
}, []string{"status"})

var FailedLoginsAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "license_apply_failed_logins_amount",
	Help: "The total number of rejected login attempts, by role",
}, []string{"role"})
