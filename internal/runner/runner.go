// Package runner sequences one update run: validate inputs, resolve
// the project and field, then update a single item or every item on
// the project. All collaborators are passed in explicitly; the runner
// owns no network or process state of its own.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danho/pvfield/internal/config"
	"github.com/danho/pvfield/internal/domain"
	"github.com/danho/pvfield/internal/fieldvalue"
	"github.com/danho/pvfield/internal/gh"
	"github.com/danho/pvfield/internal/projecturl"
	"github.com/danho/pvfield/internal/script"
	"github.com/danho/pvfield/internal/trigger"
)

var (
	// ErrProjectIDUndefined indicates the project lookup completed but
	// resolved no project for the owner and number.
	ErrProjectIDUndefined = errors.New("projectV2 id is undefined")
	// ErrFieldNotFound indicates no field with the configured name
	// exists on the project.
	ErrFieldNotFound = errors.New("field is not found")
	// ErrNoContent indicates the trigger payload carries neither an
	// issue nor a pull request, so there is nothing to add.
	ErrNoContent = errors.New("trigger payload has no issue or pull_request")
	// ErrAddItemFailed indicates the add-item mutation returned a null
	// payload.
	ErrAddItemFailed = errors.New("failed to add item to project")
	// ErrUpdateFailed indicates the update mutation returned a null
	// payload.
	ErrUpdateFailed = errors.New("failed to update item field value")
)

// GraphClient is the surface of the gh client the runner depends on.
type GraphClient interface {
	FetchProjectID(ctx context.Context, ref projecturl.Ref) (string, error)
	FetchFieldByName(ctx context.Context, projectID, fieldName string) (*domain.Field, error)
	AddItemByContentID(ctx context.Context, projectID, contentID string) (*domain.ItemNode, error)
	UpdateItemFieldValue(ctx context.Context, projectID, itemID, fieldID string, value domain.FieldValue) (*domain.ItemNode, error)
	FetchAllItems(ctx context.Context, projectID string) ([]domain.ItemNode, error)
}

var _ GraphClient = (*gh.Client)(nil)

// Outputs records step outputs as they become available. Outputs set
// before a failure stay set.
type Outputs interface {
	Set(name, value string) error
}

// Runner executes one run over its configured collaborators.
type Runner struct {
	inputs  *config.Inputs
	client  GraphClient
	trigger *trigger.Context
	eval    *script.Evaluator
	outputs Outputs
	log     zerolog.Logger
}

// New assembles a Runner.
func New(inputs *config.Inputs, client GraphClient, trig *trigger.Context, eval *script.Evaluator, outputs Outputs, log zerolog.Logger) *Runner {
	return &Runner{
		inputs:  inputs,
		client:  client,
		trigger: trig,
		eval:    eval,
		outputs: outputs,
		log:     log,
	}
}

// Run drives the full pipeline. The first error aborts the run,
// including the remaining items of an all-items walk.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.inputs.Validate(); err != nil {
		return err
	}

	ref, err := projecturl.Resolve(r.inputs.ProjectURL)
	if err != nil {
		return err
	}
	r.log.Debug().
		Str("owner", ref.OwnerName).
		Str("ownerKind", ref.OwnerKind).
		Int("number", ref.ProjectNumber).
		Msg("resolved project url")

	projectID, err := r.client.FetchProjectID(ctx, ref)
	if err != nil {
		return err
	}
	if projectID == "" {
		return ErrProjectIDUndefined
	}
	r.log.Debug().Str("projectV2Id", projectID).Msg("resolved project id")

	if err := r.outputs.Set("projectV2Id", projectID); err != nil {
		return err
	}

	field, err := r.client.FetchFieldByName(ctx, projectID, r.inputs.FieldName)
	if err != nil {
		return err
	}
	if field == nil {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, r.inputs.FieldName)
	}
	r.log.Debug().Str("fieldId", field.ID).Str("dataType", field.DataType).Msg("resolved field")

	if r.inputs.AllItems {
		return r.updateAllItems(ctx, projectID, field)
	}
	return r.updateSingleItem(ctx, projectID, field)
}

// updateSingleItem adds the triggering issue or pull request to the
// project and runs the per-item update once.
func (r *Runner) updateSingleItem(ctx context.Context, projectID string, field *domain.Field) error {
	contentID := r.trigger.ContentID()
	if contentID == "" {
		return ErrNoContent
	}
	r.log.Debug().Str("contentId", contentID).Msg("adding content to project")

	node, err := r.client.AddItemByContentID(ctx, projectID, contentID)
	if err != nil {
		return err
	}
	if node == nil {
		return ErrAddItemFailed
	}

	item := domain.ItemFromNode(*node)
	if err := r.updateItemField(ctx, projectID, field, item); err != nil {
		return err
	}

	return r.outputs.Set("itemId", item.ID)
}

// updateAllItems walks every item on the project in page order and
// applies the per-item update to each. Fail-fast: the first failing
// item aborts the rest.
func (r *Runner) updateAllItems(ctx context.Context, projectID string, field *domain.Field) error {
	nodes, err := r.client.FetchAllItems(ctx, projectID)
	if err != nil {
		return err
	}
	r.log.Debug().Int("count", len(nodes)).Msg("fetched project items")

	for _, node := range nodes {
		item := domain.ItemFromNode(node)
		if err := r.updateItemField(ctx, projectID, field, item); err != nil {
			return err
		}
	}

	return nil
}

// updateItemField applies the skip decision and, unless skipped,
// resolves the value and invokes the update mutation for one item.
func (r *Runner) updateItemField(ctx context.Context, projectID string, field *domain.Field, item domain.Item) error {
	if r.inputs.SkipUpdateScript != "" {
		skip, err := r.eval.Evaluate(ctx, r.trigger.Bindings(), item, r.inputs.SkipUpdateScript)
		if err != nil {
			return err
		}
		if script.Truthy(skip) {
			r.log.Info().Str("itemId", item.ID).Msg("skip updating the field")
			return nil
		}
	}

	value := r.inputs.FieldValue
	if value == "" {
		result, err := r.eval.Evaluate(ctx, r.trigger.Bindings(), item, r.inputs.FieldValueScript)
		if err != nil {
			return err
		}
		value = fmt.Sprintf("%v", result)
	}

	payload, err := fieldvalue.Build(*field, value)
	if err != nil {
		return err
	}

	updated, err := r.client.UpdateItemFieldValue(ctx, projectID, item.ID, field.ID, payload)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrUpdateFailed
	}

	r.log.Info().
		Str("itemId", item.ID).
		Str("fieldId", field.ID).
		Str("value", value).
		Msg("updated project item field")
	return nil
}
