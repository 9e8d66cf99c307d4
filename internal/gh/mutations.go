package gh

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"

	"github.com/danho/pvfield/internal/domain"
)

// AddItemByContentID associates an issue or pull request with the
// project and returns the resulting item with its current field
// values. Adding content that is already on the project returns the
// existing item. Returns (nil, nil) when the mutation payload is null.
func (c *Client) AddItemByContentID(ctx context.Context, projectID, contentID string) (*domain.ItemNode, error) {
	req := graphql.NewRequest(fmt.Sprintf(`
		mutation addProjectV2ItemById($projectV2Id: ID!, $contentId: ID!) {
			addProjectV2ItemById(input: { projectId: $projectV2Id, contentId: $contentId }) {
				item {
					id
					type
					%s
				}
			}
		}
	`, itemFieldValuesQuery))
	req.Var("projectV2Id", projectID)
	req.Var("contentId", contentID)

	var resp struct {
		AddProjectV2ItemByID *struct {
			Item *domain.ItemNode `json:"item"`
		} `json:"addProjectV2ItemById"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to add item to project: %w", err)
	}

	if resp.AddProjectV2ItemByID == nil {
		return nil, nil
	}

	return resp.AddProjectV2ItemByID.Item, nil
}

// UpdateItemFieldValue sets one field of one item to the given
// discriminated value. Returns (nil, nil) when the mutation payload is
// null.
func (c *Client) UpdateItemFieldValue(ctx context.Context, projectID, itemID, fieldID string, value domain.FieldValue) (*domain.ItemNode, error) {
	req := graphql.NewRequest(`
		mutation updateProjectV2ItemFieldValue(
			$projectV2Id: ID!,
			$itemId: ID!,
			$fieldId: ID!,
			$value: ProjectV2FieldValue!
		) {
			updateProjectV2ItemFieldValue(input: {
				projectId: $projectV2Id,
				itemId: $itemId,
				fieldId: $fieldId,
				value: $value
			}) {
				projectV2Item {
					id
					type
				}
			}
		}
	`)
	req.Var("projectV2Id", projectID)
	req.Var("itemId", itemID)
	req.Var("fieldId", fieldID)
	req.Var("value", value)

	var resp struct {
		UpdateProjectV2ItemFieldValue *struct {
			ProjectV2Item *domain.ItemNode `json:"projectV2Item"`
		} `json:"updateProjectV2ItemFieldValue"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update item field value: %w", err)
	}

	if resp.UpdateProjectV2ItemFieldValue == nil {
		return nil, nil
	}

	return resp.UpdateProjectV2ItemFieldValue.ProjectV2Item, nil
}
