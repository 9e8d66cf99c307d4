package domain

// ItemNode is the raw shape of a ProjectV2Item as returned by the
// GraphQL API, before projection. The gh package unmarshals query
// responses directly into this type.
type ItemNode struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	FieldValues struct {
		Nodes []FieldValueNode `json:"nodes"`
	} `json:"fieldValues"`
}

// FieldValueNode is one node of an item's fieldValues connection. The
// API returns a union type; Typename selects which of the optional
// members is meaningful. Number is a pointer so a stored 0 survives
// the round trip distinguishably from an absent value.
type FieldValueNode struct {
	Typename string    `json:"__typename"`
	Field    *FieldRef `json:"field"`
	Date   string   `json:"date"`   // ProjectV2ItemFieldDateValue
	Title  string   `json:"title"`  // ProjectV2ItemFieldIterationValue
	Number *float64 `json:"number"` // ProjectV2ItemFieldNumberValue
	Name   string   `json:"name"`   // ProjectV2ItemFieldSingleSelectValue
	Text   string   `json:"text"`   // ProjectV2ItemFieldTextValue
}

// FieldRef is the minimal field reference attached to a value node.
type FieldRef struct {
	Name string `json:"name"`
}

// ItemFromNode projects a raw item node into its flat form. Each field
// value node with a known typename contributes one entry keyed by the
// field's display name. Nodes without a field name and nodes of
// unsupported kinds (repository references and the like) are dropped
// silently; tolerating them keeps the projection stable as GitHub adds
// field value types.
func ItemFromNode(node ItemNode) Item {
	fieldValues := make(map[string]any)

	for _, fv := range node.FieldValues.Nodes {
		if fv.Field == nil || fv.Field.Name == "" {
			continue
		}

		switch fv.Typename {
		case "ProjectV2ItemFieldDateValue":
			fieldValues[fv.Field.Name] = fv.Date
		case "ProjectV2ItemFieldIterationValue":
			fieldValues[fv.Field.Name] = fv.Title
		case "ProjectV2ItemFieldNumberValue":
			if fv.Number != nil {
				fieldValues[fv.Field.Name] = *fv.Number
			}
		case "ProjectV2ItemFieldSingleSelectValue":
			fieldValues[fv.Field.Name] = fv.Name
		case "ProjectV2ItemFieldTextValue":
			fieldValues[fv.Field.Name] = fv.Text
		default:
			// other field value kinds are not supported
		}
	}

	return Item{
		ID:          node.ID,
		Type:        node.Type,
		FieldValues: fieldValues,
	}
}
