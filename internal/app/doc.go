// Package app is the composition root of process-logger.
//
// # Overview
//
// Run wires configuration, preferences, logging, the event source, the
// ingestion pipeline and the UI together, then blocks until the user quits
// or the context is cancelled.
//
// # Startup
//
//  1. Load ~/.config/process-logger/config.toml (defaults when missing)
//  2. Apply command-line overrides
//  3. Open the JSON log file; the terminal belongs to the UI
//  4. Load preferences for the theme and the base highlight color
//  5. Open the configured source (process table, directory or line feed)
//  6. Build store, highlight engine, session, queue and producer
//  7. Start the producer and run the UI
//
// # Data Flow
//
//	source.Next ──> Producer ──> Store.Append ──> Queue.Push
//	                                                  │
//	                 UI <── session.Deliver <── Queue.Drain
//
// # Shutdown
//
// When the UI returns, the producer is told to stop and given
// ShutdownTimeout to exit. Only then is the source closed. A producer that
// overruns the timeout makes Run return ingest.ErrShutdownTimeout, and the
// source is left open because the producer may still be reading from it.
package app
