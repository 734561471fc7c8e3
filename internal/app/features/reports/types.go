// internal/app/features/reports/types.go
package reports

import "github.com/rent360/rent360/internal/app/system/viewdata"

type reportLink struct {
	Label string
	Href  string
}

type indexData struct {
	viewdata.BaseVM
	Reports []reportLink
}
