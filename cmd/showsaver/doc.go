// Command showsaver is the terminal client for a showsaver download server:
// submit video URLs, watch the shared queue, browse new releases, and review
// past submissions.
package main
