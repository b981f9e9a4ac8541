package listutil_test

import (
	"net/url"
	"testing"

	"fringe/internal/application/listutil"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "page=3&per_page=50", 3, 50},
		{"zero page clamps to one", "page=0", 1, 20},
		{"negative page clamps to one", "page=-5", 1, 20},
		{"non-numeric page", "page=abc", 1, 20},
		{"per_page outside options falls back", "per_page=33", 1, 20},
		{"per_page largest option", "per_page=200", 1, 200},
		{"per_page smallest option", "per_page=10", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			got := listutil.ParsePageParams(q)
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.PerPage != tt.wantPerPage {
				t.Errorf("PerPage = %d, want %d", got.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestParseSortParams(t *testing.T) {
	allowed := []string{"title", "created_at"}
	tests := []struct {
		name     string
		query    string
		wantSort string
		wantDir  string
	}{
		{"empty", "", "", "asc"},
		{"allowed column", "sort=title&dir=desc", "title", "desc"},
		{"disallowed column dropped", "sort=password_hash&dir=desc", "", "desc"},
		{"bad dir falls back to asc", "sort=title&dir=sideways", "title", "asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := listutil.ParseSortParams(q, allowed)
			if got.Sort != tt.wantSort {
				t.Errorf("Sort = %q, want %q", got.Sort, tt.wantSort)
			}
			if got.Dir != tt.wantDir {
				t.Errorf("Dir = %q, want %q", got.Dir, tt.wantDir)
			}
		})
	}
}

func TestParseFilterParams(t *testing.T) {
	q, _ := url.ParseQuery("q=pottery&status=published&colour=teal")
	got := listutil.ParseFilterParams(q, []string{"status", "section"})

	if got.Search != "pottery" {
		t.Errorf("Search = %q, want %q", got.Search, "pottery")
	}
	if got.Filters["status"] != "published" {
		t.Errorf("Filters[status] = %q, want %q", got.Filters["status"], "published")
	}
	if _, ok := got.Filters["colour"]; ok {
		t.Error("unrecognised filter key should be dropped")
	}
	if _, ok := got.Filters["section"]; ok {
		t.Error("absent filter key should not appear in map")
	}
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		total          int
		wantPage       int
		wantTotalPages int
	}{
		{"exact multiple", 1, 20, 40, 1, 2},
		{"partial last page", 1, 20, 41, 1, 3},
		{"empty result still one page", 1, 20, 0, 1, 1},
		{"page beyond range clamps down", 9, 20, 41, 3, 3},
		{"page below range clamps up", 0, 20, 41, 1, 3},
		{"zero per_page falls back to default", 1, 0, 41, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listutil.NewPageInfo(tt.page, tt.perPage, tt.total)
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.wantTotalPages)
			}
			if got.Total != tt.total {
				t.Errorf("Total = %d, want %d", got.Total, tt.total)
			}
		})
	}
}

func TestPageInfoRows(t *testing.T) {
	tests := []struct {
		name      string
		info      listutil.PageInfo
		offset    int
		startRow  int
		endRow    int
	}{
		{"first page", listutil.NewPageInfo(1, 20, 45), 0, 1, 20},
		{"middle page", listutil.NewPageInfo(2, 20, 45), 20, 21, 40},
		{"last partial page", listutil.NewPageInfo(3, 20, 45), 40, 41, 45},
		{"empty", listutil.NewPageInfo(1, 20, 0), 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Offset(); got != tt.offset {
				t.Errorf("Offset() = %d, want %d", got, tt.offset)
			}
			if got := tt.info.StartRow(); got != tt.startRow {
				t.Errorf("StartRow() = %d, want %d", got, tt.startRow)
			}
			if got := tt.info.EndRow(); got != tt.endRow {
				t.Errorf("EndRow() = %d, want %d", got, tt.endRow)
			}
		})
	}
}
