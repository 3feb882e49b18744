// Package crawler implements the breadth-first, depth-bounded crawl of the
// support section of the target site: the URL frontier, the HTTP fetcher,
// goquery-based content extraction, boilerplate cleaning, and persistence
// of scraped pages as text files.
package crawler
