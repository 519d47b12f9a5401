package pontoon

// Stats holds the six translation progress counters carried by projects,
// locales and project-locale pairs. The counters are maintained by the
// synchronization process and read here as stored.
type Stats struct {
	TotalStrings         int `json:"total_strings"`
	ApprovedStrings      int `json:"approved_strings"`
	PretranslatedStrings int `json:"pretranslated_strings"`
	StringsWithErrors    int `json:"strings_with_errors"`
	StringsWithWarnings  int `json:"strings_with_warnings"`
	UnreviewedStrings    int `json:"unreviewed_strings"`
}

// MissingStrings returns the number of strings without any usable translation.
func (s Stats) MissingStrings() int {
	return s.TotalStrings - s.ApprovedStrings - s.PretranslatedStrings - s.StringsWithErrors - s.StringsWithWarnings
}

// Complete reports whether every string has an approved, pretranslated or
// warning-only translation.
func (s Stats) Complete() bool {
	return s.TotalStrings == s.ApprovedStrings+s.PretranslatedStrings+s.StringsWithWarnings
}

func (s *Stats) scanDest() []any {
	return []any{
		&s.TotalStrings,
		&s.ApprovedStrings,
		&s.PretranslatedStrings,
		&s.StringsWithErrors,
		&s.StringsWithWarnings,
		&s.UnreviewedStrings,
	}
}
