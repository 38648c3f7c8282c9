// internal is internal packages for upmon.
//
// The store package is the shared foundation here; history and endpoint
// build on it. Dependencies going the other way are implemented as a
// interface like checker.Reporter.
package internal
