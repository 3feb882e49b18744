// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the embedding and language-model services,
// the persistent vector store, and the page fetcher.
package driven
