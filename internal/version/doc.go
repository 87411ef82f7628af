// Package version extracts version numbers from free-form tool output.
//
// Browser and driver binaries report their versions with banner text around
// the number ("Google Chrome 114.0.5735.90", "ChromeDriver 114.0.5735.90
// (e3b1...-refs/branch-heads/5735@{#1052})"). This package reduces such output
// to a major version for compatibility matching, or to the full dotted token
// for exact comparison against a Release.
package version
