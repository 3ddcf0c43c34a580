package service

import "github.com/prometheus/client_golang/prometheus"

var (
	tapsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "economy_taps_total",
		Help: "Total successful taps across all bots",
	})
	boostPurchasesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "economy_boost_purchases_total",
		Help: "Total boost purchases by boost type",
	}, []string{"boost_type"})
	dailyClaimsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "economy_daily_claims_total",
		Help: "Total daily reward claims",
	})
	withdrawalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "economy_withdrawals_total",
		Help: "Total withdrawal requests accepted",
	})
	depositsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "economy_deposits_total",
		Help: "Total deposits credited",
	})
	sessionsIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "economy_sessions_issued_total",
		Help: "Total game sessions issued",
	})
)

func init() {
	prometheus.MustRegister(
		tapsTotal,
		boostPurchasesTotal,
		dailyClaimsTotal,
		withdrawalsTotal,
		depositsTotal,
		sessionsIssuedTotal,
	)
}
