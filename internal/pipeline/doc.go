// Package pipeline walks tblout hits in report order, fetches the range of
// every significant hit, rewrites the fetched headers and hands each record
// to a send callback.
//
// The contracts to implement are HitSource and Fetcher, which keeps the
// pipeline independent of files and external processes and easy to test.
// Work is strictly sequential: a hit is fully emitted before the next one
// is read.
package pipeline
