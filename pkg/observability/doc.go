/*
Package observability turns engine lifecycle hooks into metrics and logs.

Metrics registers Prometheus collectors and exposes them as a
domain.LifecycleHooks value; LogHooks writes one structured line per event.
Both are plugged into a tree with fsm.WithLifecycleHooks and can be combined,
since repeated options chain.
*/
package observability
