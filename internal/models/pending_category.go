package models

// PendingCategory is a category proposal produced by the external
// recommendation system, awaiting an admin's review decision.
type PendingCategory struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"` // pending, approved, rejected
	Source      string `json:"source,omitempty"`
	BookCount   int    `json:"bookCount,omitempty"`
	ReviewNotes string `json:"reviewNotes,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// PendingCategoryFilters narrows the review-queue listing.
type PendingCategoryFilters struct {
	Status string
	Search string
	Page   int
	Limit  int
	Sort   string
}

// PendingCategoryPage is one page of the review queue.
type PendingCategoryPage struct {
	Data       []PendingCategory `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// PendingCategoryStats summarizes the review queue by status.
type PendingCategoryStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// ApprovePendingCategoryRequest promotes a proposal into a real category.
type ApprovePendingCategoryRequest struct {
	CategoryName        string `json:"category_name"`
	CategoryDescription string `json:"category_description,omitempty"`
	ReviewNotes         string `json:"review_notes,omitempty"`
}

// RejectPendingCategoryRequest declines a proposal.
type RejectPendingCategoryRequest struct {
	ReviewNotes string `json:"review_notes"`
}

// BulkReviewResult aggregates per-ID outcomes of a bulk approve/reject.
type BulkReviewResult struct {
	Successful []string      `json:"successful"`
	Failed     []BulkFailure `json:"failed"`
}

// BulkFailure records one ID that could not be reviewed and why.
type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}
