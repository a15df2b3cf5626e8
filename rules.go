package xlsxgen

// StyleRule styles the cells it matches. A zero Row or empty Column matches
// every row or column. Style takes precedence over Code.
type StyleRule struct {
	Row    int               `json:"row" yaml:"row" mapstructure:"row"`
	Column string            `json:"column" yaml:"column" mapstructure:"column"`
	Code   *int              `json:"code" yaml:"code" mapstructure:"code"`
	Style  *CellStyleRequest `json:"style" yaml:"style" mapstructure:"style"`
}

func (r StyleRule) style() Style {
	switch {
	case r.Style != nil:
		return CustomStyle(*r.Style)
	case r.Code != nil:
		return CannedStyle(*r.Code)
	}
	return NoStyle()
}

// StyleRules is an ordered rule list; the first matching rule wins.
type StyleRules []StyleRule

// Resolver builds a StyleResolver for a sheet with the given columns. It
// returns nil when there are no rules.
func (rs StyleRules) Resolver(columns []string) StyleResolver {
	if len(rs) == 0 {
		return nil
	}
	return func(row, col int, _ any) Style {
		key := ""
		if col >= 1 && col <= len(columns) {
			key = columns[col-1]
		}
		for _, r := range rs {
			if r.Row != 0 && r.Row != row {
				continue
			}
			if r.Column != "" && r.Column != key {
				continue
			}
			return r.style()
		}
		return NoStyle()
	}
}
