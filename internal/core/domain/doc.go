// Package domain contains the core business entities for the support
// knowledge base: documents gathered by the crawler and the file loaders,
// the chunks derived from them, and the answer payloads produced at query
// time. It has no dependencies on adapters or infrastructure.
package domain
