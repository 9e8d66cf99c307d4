package gh

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"

	"github.com/danho/pvfield/internal/domain"
	"github.com/danho/pvfield/internal/projecturl"
)

const (
	// itemsPageSize is the fixed page size for the items connection.
	itemsPageSize = 100
	// maxItemPages caps the pagination walk. A project larger than
	// maxItemPages*itemsPageSize items stops there; the cap is a
	// safety valve against API misbehavior, not an expected size.
	maxItemPages = 13
)

// itemFieldValuesQuery is the shared selection for an item's field
// values, used by both the items query and the add-item mutation. Only
// the five supported value kinds carry a selection; anything else
// comes back as a bare __typename and is dropped at projection.
const itemFieldValuesQuery = `
	fieldValues(first: 100) {
		nodes {
			__typename
			... on ProjectV2ItemFieldDateValue {
				field {
					... on ProjectV2Field {
						name
					}
				}
				date
			}
			... on ProjectV2ItemFieldIterationValue {
				field {
					... on ProjectV2IterationField {
						name
					}
				}
				title
			}
			... on ProjectV2ItemFieldNumberValue {
				field {
					... on ProjectV2Field {
						name
					}
				}
				number
			}
			... on ProjectV2ItemFieldSingleSelectValue {
				field {
					... on ProjectV2SingleSelectField {
						name
					}
				}
				name
			}
			... on ProjectV2ItemFieldTextValue {
				field {
					... on ProjectV2Field {
						name
					}
				}
				text
			}
		}
	}`

// FetchProjectID resolves a project reference to its opaque node id.
// Returns an empty id with a nil error when the owner or project does
// not resolve.
func (c *Client) FetchProjectID(ctx context.Context, ref projecturl.Ref) (string, error) {
	// The owner kind selects the top-level query field and cannot be
	// a GraphQL variable. projecturl restricts it to two values.
	if ref.OwnerKind != projecturl.OwnerKindOrganization && ref.OwnerKind != projecturl.OwnerKindUser {
		return "", fmt.Errorf("unexpected owner kind: %s", ref.OwnerKind)
	}

	req := graphql.NewRequest(fmt.Sprintf(`
		query fetchProjectV2Id($projectOwnerName: String!, $projectNumber: Int!) {
			%s(login: $projectOwnerName) {
				projectV2(number: $projectNumber) {
					id
				}
			}
		}
	`, ref.OwnerKind))
	req.Var("projectOwnerName", ref.OwnerName)
	req.Var("projectNumber", ref.ProjectNumber)

	type ownerNode struct {
		ProjectV2 *struct {
			ID string `json:"id"`
		} `json:"projectV2"`
	}
	var resp struct {
		Organization *ownerNode `json:"organization"`
		User         *ownerNode `json:"user"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("failed to fetch project id: %w", err)
	}

	owner := resp.Organization
	if ref.OwnerKind == projecturl.OwnerKindUser {
		owner = resp.User
	}
	if owner == nil || owner.ProjectV2 == nil {
		return "", nil
	}

	return owner.ProjectV2.ID, nil
}

// FetchFieldByName looks up a project field by its display name,
// including option and iteration metadata for the typed field kinds.
// Returns (nil, nil) when no field of that name exists.
func (c *Client) FetchFieldByName(ctx context.Context, projectID, fieldName string) (*domain.Field, error) {
	req := graphql.NewRequest(`
		query fetchProjectV2FieldByName($projectV2Id: ID!, $fieldName: String!) {
			node(id: $projectV2Id) {
				... on ProjectV2 {
					field(name: $fieldName) {
						__typename
						... on ProjectV2Field {
							id
							name
							dataType
						}
						... on ProjectV2SingleSelectField {
							id
							name
							dataType
							options {
								id
								name
							}
						}
						... on ProjectV2IterationField {
							id
							name
							dataType
							configuration {
								completedIterations {
									id
									title
								}
								iterations {
									id
									title
								}
							}
						}
					}
				}
			}
		}
	`)
	req.Var("projectV2Id", projectID)
	req.Var("fieldName", fieldName)

	var resp struct {
		Node *struct {
			Field *domain.Field `json:"field"`
		} `json:"node"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch field: %w", err)
	}

	if resp.Node == nil || resp.Node.Field == nil {
		return nil, nil
	}

	return resp.Node.Field, nil
}

// ItemsPage is one page of the project items connection.
type ItemsPage struct {
	Items       []domain.ItemNode
	HasNextPage bool
	EndCursor   string
}

// FetchItemsPage fetches a single page of project items. An empty
// after cursor starts the sequence.
func (c *Client) FetchItemsPage(ctx context.Context, projectID, after string) (ItemsPage, error) {
	req := graphql.NewRequest(fmt.Sprintf(`
		query fetchProjectV2Items($projectV2Id: ID!, $after: String) {
			node(id: $projectV2Id) {
				... on ProjectV2 {
					items(first: %d, after: $after) {
						edges {
							node {
								id
								type
								%s
							}
						}
						pageInfo {
							hasNextPage
							endCursor
						}
					}
				}
			}
		}
	`, itemsPageSize, itemFieldValuesQuery))
	req.Var("projectV2Id", projectID)
	if after != "" {
		req.Var("after", after)
	} else {
		req.Var("after", nil)
	}

	var resp struct {
		Node struct {
			Items struct {
				Edges []struct {
					Node domain.ItemNode `json:"node"`
				} `json:"edges"`
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
			} `json:"items"`
		} `json:"node"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return ItemsPage{}, fmt.Errorf("failed to fetch items: %w", err)
	}

	page := ItemsPage{
		HasNextPage: resp.Node.Items.PageInfo.HasNextPage,
		EndCursor:   resp.Node.Items.PageInfo.EndCursor,
	}
	page.Items = make([]domain.ItemNode, 0, len(resp.Node.Items.Edges))
	for _, edge := range resp.Node.Items.Edges {
		page.Items = append(page.Items, edge.Node)
	}

	return page, nil
}

// FetchAllItems walks the items connection from the start, collecting
// every item in page order, and stops when the connection reports no
// next page or the page cap is reached.
func (c *Client) FetchAllItems(ctx context.Context, projectID string) ([]domain.ItemNode, error) {
	var all []domain.ItemNode

	after := ""
	for i := 0; i < maxItemPages; i++ {
		page, err := c.FetchItemsPage(ctx, projectID, after)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		if !page.HasNextPage {
			return all, nil
		}
		after = page.EndCursor
	}

	return all, nil
}
