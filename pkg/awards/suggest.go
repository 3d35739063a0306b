package awards

import (
	"fmt"
	"sort"
)

// strongGridCount is the per-band grid count worth calling out.
const strongGridCount = 50

// Suggest produces readable award recommendations from a report and
// the active thresholds: achieved and close-to-achieved (90%) notes
// for DXCC and VUCC, plus per-band strong grid counts.
func Suggest(rep *Report, thresholds map[string]int) []string {
	if rep == nil {
		return nil
	}
	if thresholds == nil {
		thresholds = DefaultThresholds
	}

	var suggestions []string

	dxccNeeded := threshold(thresholds, "DXCC")
	vuccNeeded := threshold(thresholds, "VUCC")

	switch {
	case rep.UniqueCountries >= dxccNeeded:
		suggestions = append(suggestions,
			fmt.Sprintf("DXCC achieved: %d unique countries", rep.UniqueCountries))
	case rep.UniqueCountries >= dxccNeeded*9/10:
		suggestions = append(suggestions,
			fmt.Sprintf("DXCC close: %d countries (need %d more)", rep.UniqueCountries, dxccNeeded-rep.UniqueCountries))
	}

	switch {
	case rep.UniqueGrids >= vuccNeeded:
		suggestions = append(suggestions,
			fmt.Sprintf("VUCC achieved: %d unique grids", rep.UniqueGrids))
	case rep.UniqueGrids >= vuccNeeded*9/10:
		suggestions = append(suggestions,
			fmt.Sprintf("VUCC close: %d grids (need %d more)", rep.UniqueGrids, vuccNeeded-rep.UniqueGrids))
	}

	bands := make([]string, 0, len(rep.GridsPerBand))
	for band := range rep.GridsPerBand {
		bands = append(bands, band)
	}
	sort.Strings(bands)
	for _, band := range bands {
		if count := rep.GridsPerBand[band]; count >= strongGridCount {
			label := band
			if label == "" {
				label = "unknown"
			}
			suggestions = append(suggestions,
				fmt.Sprintf("Strong grid count on %s: %d", label, count))
		}
	}

	return suggestions
}

func threshold(thresholds map[string]int, key string) int {
	if v, ok := thresholds[key]; ok && v > 0 {
		return v
	}
	return DefaultThresholds[key]
}
