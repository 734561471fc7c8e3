// Package formutil helps pages that re-render a form after a failed
// submission. Form data structs embed Base, echo the submitted values back
// and set Error.
//
//	type newRequestData struct {
//		formutil.Base
//		Title string
//	}
//
//	data := newRequestData{Title: title}
//	formutil.SetBase(&data.Base, r, "New request", "/maintenance")
//	data.SetError("Title is required.")
//	templates.Render(w, r, "maintenance_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/rent360/rent360/internal/app/system/viewdata"
)

// Base is the page chrome plus the form's error banner.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase fills the page chrome for r.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the banner text. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// HasError reports whether the banner is set.
func (b *Base) HasError() bool { return b.Error != "" }
