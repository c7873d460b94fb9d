// Package report keeps a history of evaluation run summaries so models can
// be compared across runs. Stores implement the Store interface; the memory
// store lives here and the sqlite store in infra/store.
package report
