/*
Package ports defines the interfaces consumers of the espigot engines depend on.

# Key Interfaces

  - DigitStream: A lazy, infinite stream of digits; consumed by the Runner and
    the HTTP /stream endpoint.
  - PrecisionEngine: A fixed-precision formatter ("2." plus N digits);
    consumed by Compare, the HTTP JSON endpoint and the MCP e_digits tool.
  - EngineFactory: How adapters obtain engines per request.
*/
package ports
