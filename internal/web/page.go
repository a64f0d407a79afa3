package web

import (
	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/view"
)

// pageData is the template input for the listing page.
type pageData struct {
	Title     string
	Controls  []control
	Campaigns []model.Campaign
	Summary   model.Summary
	Hidden    int
	Total     int
	JSONHref  string
}

// control is one link of the control bar.
type control struct {
	Label  string
	Href   string
	Active bool
	Toggle bool
}

func newPageData(title string, listing *model.Listing) pageData {
	q := listing.Query

	controls := make([]control, 0, len(view.Actions()))
	for _, a := range view.Actions() {
		// Next only fails for unknown actions.
		next, err := view.Next(q, a)
		if err != nil {
			continue
		}
		controls = append(controls, control{
			Label:  a.Label(q),
			Href:   "/?" + StateValues(next).Encode(),
			Active: a.Active(q),
			Toggle: a == view.ActionToggleFunded,
		})
	}

	return pageData{
		Title:     title,
		Controls:  controls,
		Campaigns: listing.Campaigns,
		Summary:   listing.Summary(),
		Hidden:    listing.Hidden,
		Total:     listing.Total,
		JSONHref:  "/campaigns.json?" + StateValues(q).Encode(),
	}
}
