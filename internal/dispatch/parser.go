package dispatch

// ParseBlock parses one dispatch block into zero or more ParsedDispatch
// values, one per resolved date. Returns nil when no date resolves.
func ParseBlock(content string) []ParsedDispatch {
	dates := ParseDateRange(content)
	if len(dates) == 0 {
		return nil
	}

	dayOfWeek := ExtractDayOfWeek(content)
	vehicles := ExtractVehicleInfo(content)
	commander, driver := ExtractPersonnel(content)

	results := make([]ParsedDispatch, 0, len(dates))
	for _, date := range dates {
		results = append(results, ParsedDispatch{
			Date:      date,
			DayOfWeek: dayOfWeek,
			Vehicles:  vehicles,
			Commander: commander,
			Driver:    driver,
		})
	}
	return results
}

// Parse is the top-level entry point: it gates the whole message through
// the classifier, segments it into blocks, and parses each dispatch-
// relevant block independently. Returns nil when no block yields a record.
func Parse(content string) []ParsedDispatch {
	if !IsDispatchMessage(content) {
		return nil
	}

	var all []ParsedDispatch
	for _, block := range SplitBlocks(content) {
		if !IsDispatchMessage(block) {
			continue
		}
		all = append(all, ParseBlock(block)...)
	}
	return all
}
