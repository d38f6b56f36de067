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

// SPRT does a sequential probability ratio test calculation on the given
// number of wins, draws, and losses and returns the log-likelihood ratio
// (llr) of the elo1 hypothesis against the elo0 one.
func SPRT(ws, ds, ls int, elo0, elo1 float64) (llr float64) {
	w := float64(ws) + 0.5
	d := float64(ds) + 0.5
	l := float64(ls) + 0.5

	N := w + d + l // total number of games
	_, dlo := wdlToElo(w/N, d/N, l/N)

	w0, d0, l0 := eloToWDL(elo0, dlo) // elo0 WDL probabilities
	w1, d1, l1 := eloToWDL(elo1, dlo) // elo1 WDL probabilities

	return w*math.Log(w1/w0) +
		d*math.Log(d1/d0) +
		l*math.Log(l1/l0)
}

// PentaSPRT takes the results of the game pairs and the two elo hypotheses
// and returns a log-likelihood ratio which compares the fit of the two
// hypotheses to the game pair data using a pentanomial model.
func PentaSPRT(lls, lds, dds, wds, wws int, elo0, elo1 float64) (llr float64) {
	N := float64(lls+lds+dds+wds+wws) + 2.5 // total number of pairs

	ll := (float64(lls) + 0.5) / N // measured loss-loss probability
	ld := (float64(lds) + 0.5) / N // measured loss-draw probability
	dd := (float64(dds) + 0.5) / N // measured win-loss/draw-draw probability
	wd := (float64(wds) + 0.5) / N // measured win-draw probability
	ww := (float64(wws) + 0.5) / N // measured win-win probability

	// empirical mean of random variable
	mu := ww + 0.75*wd + 0.5*dd + 0.25*ld

	// standard deviation (multiplied by sqrt of N) of the random variable
	r := math.Sqrt(pentaVariance(ll, ld, dd, wd, ww, mu))

	// convert elo bounds to score
	mu0 := nEloToScore(elo0, r)
	mu1 := nEloToScore(elo1, r)

	// deviation to the score bounds
	r0 := pentaVariance(ll, ld, dd, wd, ww, mu0)
	r1 := pentaVariance(ll, ld, dd, wd, ww, mu1)

	if r0 == 0 || r1 == 0 {
		return 0
	}

	// note: this is not the exact llr formula but rather a simplified yet
	// very accurate approximation. see http://hardy.uhasselt.be/Fishtest/support_MLE_multinomial.pdf
	return 0.5 * N * math.Log(r0/r1)
}

// StoppingBounds returns the llr bounds below which H0 and above which H1
// is accepted for the given type I and type II error probabilities.
func StoppingBounds(alpha, beta float64) (lower float64, upper float64) {
	lower = math.Log(beta / (1 - alpha))
	upper = math.Log((1 - beta) / alpha)
	return
}

// Decision is the state of a sequential test.
type Decision int

const (
	Continue Decision = iota
	AcceptH0
	AcceptH1
)

func (decision Decision) String() string {
	switch decision {
	case AcceptH0:
		return "H0 accepted"
	case AcceptH1:
		return "H1 accepted"
	default:
		return "continue"
	}
}

// Test is a pentanomial SPRT of the elo1 hypothesis against elo0 with the
// given error probabilities.
type Test struct {
	Elo0, Elo1  float64
	Alpha, Beta float64
}

// Decide computes the llr of the given score and decides whether the test
// can stop.
func (test Test) Decide(score *Score) (llr float64, decision Decision) {
	lower, upper := StoppingBounds(test.Alpha, test.Beta)

	p := score.Pairs
	llr = PentaSPRT(p[0], p[1], p[2], p[3], p[4], test.Elo0, test.Elo1)

	switch {
	case llr <= lower:
		return llr, AcceptH0
	case llr >= upper:
		return llr, AcceptH1
	default:
		return llr, Continue
	}
}

// eloToWDL converts the bayesian elo to its wdl probabilities.
func eloToWDL(elo, dlo float64) (w float64, d float64, l float64) {
	w = 1 / (1 + math.Pow(10, (-elo+dlo)/400)) // win probability sigmoid
	l = 1 / (1 + math.Pow(10, (+elo+dlo)/400)) // loss probability sigmoid
	d = 1 - w - l                              // draw probability curve
	return w, d, l
}

// wdlToElo converts the wdl probabilities to its bayesian elo.
func wdlToElo(w, d, l float64) (elo float64, dlo float64) {
	elo = 200 * math.Log10((w/l)*((1-l)/(1-w)))
	dlo = 200 * math.Log10(((1-l)/l)*((1-w)/w))
	return elo, dlo
}

func nEloToScore(nelo, r float64) float64 {
	return nelo*math.Sqrt2*r/(800/math.Ln10) + 0.5
}
