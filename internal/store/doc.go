// Package store provides SQLite-backed storage for tracked topics and
// fetched search results.
//
// The store holds two tables:
//   - topics: the registry of (topic, query, isactive) entries
//   - tweets: result records, one row per (query, tweetid)
//
// # Sessions
//
// All reads and writes go through a Tx obtained from Begin. One command
// invocation is one Tx: it either commits once at the end or is rolled
// back, so a failed run leaves no partial writes.
//
// Transactions start with BEGIN IMMEDIATE. Two processes working on the same
// file serialise on the write lock instead of failing late with
// SQLITE_BUSY on their first write.
//
// # Uniqueness
//
//   - UNIQUE(topic, query) on topics closes the check-then-insert gap of
//     the registry's duplicate scan.
//   - UNIQUE(query, tweetid) on tweets makes result inserts idempotent.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
