package core

import "time"

// Metrics records business events; implemented by services/metrics.
type Metrics interface {
	PurchaseSucceeded()
	PurchaseFailed(step string)
	SignIn(result string)
	ViewDegraded(dataset string)
	ObserveViewLoad(view string, took time.Duration)
}

// NopMetrics discards everything.
type NopMetrics struct{}

var _ Metrics = NopMetrics{}

func (NopMetrics) PurchaseSucceeded()                    {}
func (NopMetrics) PurchaseFailed(string)                 {}
func (NopMetrics) SignIn(string)                         {}
func (NopMetrics) ViewDegraded(string)                   {}
func (NopMetrics) ObserveViewLoad(string, time.Duration) {}
