package metrics

// IncrementProjectCreated increments project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementTransition increments the committed transition counter for a status pair
func (m *Metrics) IncrementTransition(from, to string) {
	m.safeExecute("IncrementTransition", func() {
		m.TransitionsTotal.WithLabelValues(from, to).Inc()
	})
}

// IncrementTransitionRejected increments the rejected transition counter
func (m *Metrics) IncrementTransitionRejected(reason string) {
	m.safeExecute("IncrementTransitionRejected", func() {
		m.TransitionRejectedTotal.WithLabelValues(reason).Inc()
	})
}

// IncrementChurnEvent increments the churn event counter
func (m *Metrics) IncrementChurnEvent() {
	m.safeExecute("IncrementChurnEvent", func() {
		m.ChurnEventsTotal.Inc()
	})
}

// AddProjectsRedistributed adds to the redistributed projects counter
func (m *Metrics) AddProjectsRedistributed(count int) {
	m.safeExecute("AddProjectsRedistributed", func() {
		m.ProjectsRedistributed.Add(float64(count))
	})
}

// IncrementClientNotification increments the client notification counter
func (m *Metrics) IncrementClientNotification() {
	m.safeExecute("IncrementClientNotification", func() {
		m.ClientNotificationsTotal.Inc()
	})
}

// SetProjectsTotal sets total projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetAgenciesTotal sets total agencies gauge
func (m *Metrics) SetAgenciesTotal(count int64) {
	m.safeExecute("SetAgenciesTotal", func() {
		m.AgenciesTotal.Set(float64(count))
	})
}
