package schema

// Reference returns the built-in schemas for the sales and CRM sources.
// These mirror the tracked product catalogue and CRM event taxonomy and act
// as the default when no external schema source is configured.
func Reference() Registry {
	return Registry{
		SourceSales: {
			"account_id": {Type: TypeText},
			"product_name": {
				Type:    TypeText,
				Choices: []string{"Globberin", "Vorbulon", "Snaffleflax", "Beeblizox"},
				ValueMapping: map[string][]string{
					"Globberin":   {"Globbrin", " Globberin"},
					"Vorbulon":    {"vorbulon."},
					"Snaffleflax": {"Snafulopromazide-b (Snaffleflax)"},
					"Beeblizox":   {"Beebliz%C3%B6x"},
				},
			},
			"date":       {Type: TypeDate},
			"unit_sales": {Type: TypeInteger},
			"created_at": {Type: TypeDate},
		},
		SourceCRM: {
			"account_id": {Type: TypeText},
			"event_type": {
				Type:    TypeText,
				Choices: []string{"f2f", "group call", "workplace event"},
			},
			"date": {Type: TypeDate},
		},
	}
}
