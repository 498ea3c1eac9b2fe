package web

// Page is one entry of the sidebar navigation.
type Page string

const (
	PageHome      Page = "Home"
	PageAnalytics Page = "Analytics Overview"
	PageInsights  Page = "Deep Insights"
)

// Pages lists the navigation entries in sidebar order.
var Pages = []Page{PageHome, PageAnalytics, PageInsights}

// ParsePage resolves a navigation choice; anything unknown is Home.
func ParsePage(name string) Page {
	for _, p := range Pages {
		if string(p) == name {
			return p
		}
	}
	return PageHome
}

// Uploads reports whether the page takes a data file.
func (p Page) Uploads() bool { return p == PageAnalytics || p == PageInsights }

func (p Page) intro() string {
	switch p {
	case PageAnalytics:
		return "Upload your data to generate scatter plots, histograms, and pairplots."
	case PageInsights:
		return "Uncover deeper insights with summary statistics and data structure information."
	}
	return ""
}

func (p Page) noUpload() string {
	switch p {
	case PageAnalytics:
		return "Please upload a CSV or Excel file to generate plots."
	case PageInsights:
		return "Please upload a CSV or Excel file to generate insights."
	}
	return ""
}
