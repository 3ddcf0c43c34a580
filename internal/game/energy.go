package game

import "time"

// Regenerate computes replenished energy from wall-clock time. It is pure:
// recovered = floor(elapsed_seconds * rechargeRate), saturating at max.
// Negative elapsed time (clock skew) is clamped to zero, so re-applying at
// the same instant is a no-op beyond the caller refreshing its timestamp.
func Regenerate(energy, energyMax, rechargeRate int, lastUpdate, now time.Time) (newEnergy, recovered int) {
	elapsed := now.Sub(lastUpdate).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	recovered = int(elapsed * float64(rechargeRate))
	newEnergy = energy + recovered
	if newEnergy > energyMax {
		newEnergy = energyMax
		recovered = energyMax - energy
		if recovered < 0 {
			recovered = 0
			newEnergy = energy
		}
	}
	return newEnergy, recovered
}
