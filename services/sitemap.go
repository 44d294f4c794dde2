package services

import (
	"time"

	"github.com/beevik/etree"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry одна ссылка карты сайта
type SitemapEntry struct {
	Location     string
	LastModified time.Time
}

// BuildSitemap собирает документ sitemap.xml
func BuildSitemap(entries []SitemapEntry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	for _, entry := range entries {
		url := urlset.CreateElement("url")
		url.CreateElement("loc").SetText(entry.Location)
		if !entry.LastModified.IsZero() {
			url.CreateElement("lastmod").SetText(entry.LastModified.UTC().Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
