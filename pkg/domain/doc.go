/*
Package domain contains the shared vocabulary of the espigot digit engines.

It is kept free of I/O and of any big-integer state so that adapters (CLI,
HTTP, MCP) and engines can agree on types without importing each other.

# Key Entities

  - Digit: A single decimal digit of e, in [0, 9].
  - EngineKind: Which spigot produces the digits ("cfrac" or "series").
  - LifecycleHooks: Callbacks fired while digits are generated.
*/
package domain
