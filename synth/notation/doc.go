// Package notation parses the note mini-language into a [tune.Tune].
//
// A score is a sequence of lines. Each line holds directives or channel
// entries; '#' starts a comment.
//
//	key G
//	instrument cello
//	duration 0.5
//	volume 0.3
//	ch1[A4 1.5:A4-F5 Z] ch2[0.5:C4]
//
// Directives (key, instrument, duration, volume) may be written as
// "name value", "name: value" or "name=value" and affect every entry that
// follows. An entry chN[...] appends notes to channel N. Items inside the
// brackets are separated by spaces or commas. An item is an optional
// relative duration followed by ':' and one or more pitches joined by '-'
// (a chord). A pitch is a letter and octave digit ("A4") optionally
// followed by '#' or 'b', a note name such as "C#4", or Z for a rest.
package notation
