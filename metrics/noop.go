// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noopMetrics hands out a single meter that drops everything.
type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) GetOrCreateCountMeter(string) CountMeter                 { return discard{} }
func (noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return discard{} }
func (noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter                 { return discard{} }
func (noopMetrics) GetOrCreateHandler() http.Handler                        { return nil }

func (noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return discard{}
}

type discard struct{}

func (discard) ObserveWithLabels(int64, map[string]string) {}
func (discard) AddWithLabel(int64, map[string]string)      {}
func (discard) Add(int64)                                  {}
func (discard) Set(int64)                                  {}
