package store

// Table names the adapter knows about. Column sets are closed: a write
// naming any other column is rejected before SQL is built.
const (
	TableExchanges      = "exchange_exchanges"
	TableFAQs           = "exchange_faqs"
	TablePageContents   = "page_contents"
	TablePinnedArticles = "pinned_articles"
	TableBanners        = "banners"
)

// writableTables is the allow-list for mutations. Anything else fails fast
// with ErrForbiddenTable and no query is issued.
var writableTables = map[string]bool{
	TableExchanges:      true,
	TableFAQs:           true,
	TablePageContents:   true,
	TablePinnedArticles: true,
	TableBanners:        true,
}

// tableColumns lists the writable columns per table. id and the timestamp
// columns are server-managed and never accepted from callers.
var tableColumns = map[string]map[string]bool{
	TableExchanges: {
		"name_ko":           true,
		"logoimageurl":      true,
		"benefit1_tag_ko":   true,
		"benefit1_value_ko": true,
		"benefit2_tag_ko":   true,
		"benefit2_value_ko": true,
		"benefit3_tag_ko":   true,
		"benefit3_value_ko": true,
		"benefit4_tag_ko":   true,
		"benefit4_value_ko": true,
		"link":              true,
	},
	TableFAQs: {
		"question_ko": true,
		"answer_ko":   true,
	},
	TablePageContents: {
		"page_type": true,
		"content":   true,
	},
	TablePinnedArticles: {
		"position":    true,
		"badge":       true,
		"category":    true,
		"title":       true,
		"description": true,
		"footer_text": true,
		"cta_text":    true,
		"cta_link":    true,
		"is_active":   true,
	},
	TableBanners: {
		"page":      true,
		"enabled":   true,
		"image_url": true,
		"content":   true,
	},
}

// upsertKeys maps a table to the column UpsertByKey may key on.
var upsertKeys = map[string]string{
	TablePageContents:   "page_type",
	TablePinnedArticles: "position",
	TableBanners:        "page",
}

// orderableColumns extends the writable set with server-managed columns that
// reads may sort or filter on.
func orderableColumns(table string) map[string]bool {
	cols := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for c := range tableColumns[table] {
		cols[c] = true
	}
	return cols
}
