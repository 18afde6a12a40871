// Package model defines the records shared by the registry, the ingestion
// engine and the store.
//
// Topic entries are owned by the registry. Result records are written once
// by the ingestion engine and never mutated. The watermark is not a stored
// entity: it is derived from the result records of a query at read time.
package model
