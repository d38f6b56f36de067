// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import "math"

// Elo returns the likely elo of the target player along with its p < 0.05
// lower and upper bounds, from its wins, draws, and losses. A
// Dirichlet([0.5, 0.5, 0.5]) prior keeps the estimate finite.
func Elo(ws, ds, ls int) (muMin float64, mu float64, muMax float64) {
	N := float64(ws+ds+ls) + 1.5 // total number of games

	w := (float64(ws) + 0.5) / N // measured win probability
	d := (float64(ds) + 0.5) / N // measured draw probability
	l := (float64(ls) + 0.5) / N // measured loss probability

	// empirical mean of random variable
	mu = w + d/2

	// standard deviation of the random variable
	sigma := math.Sqrt(
		w*math.Pow(1-mu, 2)+
			d*math.Pow(0.5-mu, 2)+
			l*math.Pow(0-mu, 2),
	) / math.Sqrt(N)

	muMax = mu + phiInv(0.975)*sigma // upper bound
	muMin = mu + phiInv(0.025)*sigma // lower bound

	return clampElo(muMin), clampElo(mu), clampElo(muMax)
}

// PentaElo calculates the best fit elo for the given game pair results using
// a pentanomial model, along with its p < 0.05 error bounds.
func PentaElo(lls, lds, dds, wds, wws int) (muMin float64, mu float64, muMax float64) {
	N := float64(lls+lds+dds+wds+wws) + 2.5 // total number of pairs

	ll := (float64(lls) + 0.5) / N // measured loss-loss probability
	ld := (float64(lds) + 0.5) / N // measured loss-draw probability
	dd := (float64(dds) + 0.5) / N // measured win-loss/draw-draw probability
	wd := (float64(wds) + 0.5) / N // measured win-draw probability
	ww := (float64(wws) + 0.5) / N // measured win-win probability

	// empirical mean of random variable
	mu = ww + 0.75*wd + 0.5*dd + 0.25*ld

	// standard deviation of the random variable
	sigma := math.Sqrt(pentaVariance(ll, ld, dd, wd, ww, mu)) / math.Sqrt(N)

	muMax = mu + phiInv(0.975)*sigma // upper bound
	muMin = mu + phiInv(0.025)*sigma // lower bound

	return clampElo(muMin), clampElo(mu), clampElo(muMax)
}

// pentaVariance is the variance of a pair's score around mu.
func pentaVariance(ll, ld, dd, wd, ww, mu float64) float64 {
	return ww*math.Pow(1-mu, 2) +
		wd*math.Pow(0.75-mu, 2) +
		dd*math.Pow(0.50-mu, 2) +
		ld*math.Pow(0.25-mu, 2) +
		ll*math.Pow(0.00-mu, 2)
}

// clampElo converts an expected score into elo.
func clampElo(x float64) float64 {
	switch {
	case x <= 0, x >= 1:
		return 0

	default:
		return -400 * math.Log10(1/x-1)
	}
}

func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
