// Package signal provides whole-buffer utilities: peak normalization and
// channel (de)interleaving.
package signal
