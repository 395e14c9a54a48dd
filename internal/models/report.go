package models

// ReportState is the lifecycle state of an asynchronously generated
// sales-statistics report. Transitions are monotonic:
// generating -> completed or generating -> failed.
type ReportState string

const (
	ReportGenerating ReportState = "generating"
	ReportCompleted  ReportState = "completed"
	ReportFailed     ReportState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s ReportState) Terminal() bool {
	return s == ReportCompleted || s == ReportFailed
}

// ReportStatus is the polled progress snapshot of a report.
type ReportStatus struct {
	ID       string      `json:"id"`
	Status   ReportState `json:"status"`
	Progress int         `json:"progress"`
	Message  string      `json:"message"`
	Title    string      `json:"title,omitempty"`
}

// GenerateReportResponse is the backend's acknowledgement of a generation
// request. The user identity is derived from the auth token server-side.
type GenerateReportResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	EstimatedTime string `json:"estimatedTime"`
	Period        string `json:"period"`
}

// Report is the full sales-analytics document fetched once a report reaches
// the completed state.
type Report struct {
	ID                 string         `json:"_id"`
	Title              string         `json:"title"`
	Summary            string         `json:"summary"`
	RichSummary        string         `json:"richSummary,omitempty"`
	Status             ReportState    `json:"status"`
	BookAnalysis       []BookAnalysis `json:"bookAnalysis"`
	ChartData          ChartData      `json:"chartData"`
	AIInsights         *AIInsights    `json:"aiInsights,omitempty"`
	Conclusion         string         `json:"conclusion"`
	Recommendations    []string       `json:"recommendations"`
	TotalBooksAnalyzed int            `json:"totalBooksAnalyzed"`
	Start              string         `json:"start"`
	End                string         `json:"end"`
	CreatedAt          string         `json:"createdAt"`
	UpdatedAt          string         `json:"updatedAt"`
}

// BookAnalysis is one analyzed title inside a report.
type BookAnalysis struct {
	Book       string  `json:"book"`
	Reason     string  `json:"reason"`
	SalesCount int     `json:"salesCount"`
	Rating     float64 `json:"rating"`
}

// AIInsights carries the free-form analysis sections of a report.
type AIInsights struct {
	CustomerInsights      string `json:"customerInsights,omitempty"`
	MarketTrends          string `json:"marketTrends,omitempty"`
	BusinessOpportunities string `json:"businessOpportunities,omitempty"`
	PricingStrategy       string `json:"pricingStrategy,omitempty"`
	Predictions           string `json:"predictions,omitempty"`
}

// ChartData is the chart-ready portion of a report.
type ChartData struct {
	TopBooks           []TopBook            `json:"topBooks"`
	ReasonDistribution []ReasonDistribution `json:"reasonDistribution"`
	Trends             []Trend              `json:"trends"`
	Correlations       []Correlation        `json:"correlations"`
}

type TopBook struct {
	Title string `json:"title"`
	Sales int    `json:"sales"`
}

type ReasonDistribution struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type Trend struct {
	Period     string `json:"period"`
	TotalSales int    `json:"totalSales"`
	Growth     string `json:"growth"`
}

type Correlation struct {
	Factor      string  `json:"factor"`
	Correlation float64 `json:"correlation"`
}

// Pagination is the backend's list paging envelope.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ReportPage is one page of the report listing.
type ReportPage struct {
	Data       []Report   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
