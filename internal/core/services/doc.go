// Package services contains the core application logic: the
// retrieval/answer orchestrator and the ingestion driver. Services
// depend only on the port interfaces, never on concrete adapters.
package services
