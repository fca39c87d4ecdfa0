package triage

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

// ReportView is an admin's local working set of reports: the currently
// rendered page plus the selection. The coordinator mutates it optimistically
// and rolls it back from a snapshot when the store refuses the batch.
type ReportView struct {
	Reports  []directory.ScamReport
	Selected map[int64]bool

	// LastError is the user-visible message from the most recent failed
	// bulk action, cleared on the next success.
	LastError string
}

// NewReportView builds a view over one page of reports with nothing selected.
func NewReportView(reports []directory.ScamReport) *ReportView {
	return &ReportView{
		Reports:  reports,
		Selected: make(map[int64]bool),
	}
}

// Select marks a report id as selected.
func (v *ReportView) Select(id int64) {
	if v.Selected == nil {
		v.Selected = make(map[int64]bool)
	}
	v.Selected[id] = true
}

// ClearSelection deselects everything.
func (v *ReportView) ClearSelection() {
	v.Selected = make(map[int64]bool)
}

// SelectedIDs returns the selected ids in ascending order.
func (v *ReportView) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(v.Selected))
	for id, ok := range v.Selected {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BulkCoordinator applies one target status to a set of reports as a single
// batch: optimistic in-view update first, one batched store write second,
// snapshot rollback if the write fails.
type BulkCoordinator struct {
	store BulkStore
}

// NewBulkCoordinator creates a bulk status coordinator.
func NewBulkCoordinator(store BulkStore) *BulkCoordinator {
	return &BulkCoordinator{store: store}
}

// Apply moves every report in ids to target. No-op when ids is empty.
// Reports present in the view are updated in place before the store call;
// if the store call fails, each affected report is restored to its exact
// prior status, the selection is preserved so the admin can retry, and
// view.LastError carries the user-visible message. On success the selection
// is cleared.
//
// The batch is atomic from the caller's point of view: the store write is a
// single id-membership update, so partial application is not observable here.
func (c *BulkCoordinator) Apply(ctx context.Context, view *ReportView, ids []int64, target directory.ReportStatus) error {
	if len(ids) == 0 {
		return nil
	}

	idSet := make(map[int64]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	// Reject the whole batch up front if any in-view member cannot legally
	// move to target; a half-checkable batch must not half-apply.
	for i := range view.Reports {
		r := &view.Reports[i]
		if idSet[r.ID] {
			if err := directory.CheckReportTransition(r.Status, target); err != nil {
				return err
			}
		}
	}

	// Snapshot, then optimistic apply.
	prev := make(map[int64]directory.ReportStatus, len(ids))
	for i := range view.Reports {
		r := &view.Reports[i]
		if idSet[r.ID] {
			prev[r.ID] = r.Status
			r.Status = target
		}
	}

	if err := c.store.UpdateReportStatuses(ctx, ids, target); err != nil {
		for i := range view.Reports {
			r := &view.Reports[i]
			if status, ok := prev[r.ID]; ok {
				r.Status = status
			}
		}
		view.LastError = "Could not update the selected reports. Nothing was changed; try again."
		zap.L().Error("triage: bulk status update failed, view rolled back",
			zap.Int("count", len(ids)),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		return eris.Wrap(err, "triage: bulk status update")
	}

	view.LastError = ""
	view.ClearSelection()

	zap.L().Info("triage: bulk status applied",
		zap.Int("count", len(ids)),
		zap.String("target", string(target)),
	)
	return nil
}
