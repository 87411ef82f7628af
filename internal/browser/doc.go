// Package browser finds the installed Chrome or Chromium and reports its version.
//
// On Windows the browser is not on PATH and its --version flag does not print
// to a console, so the version is read from the version-numbered folder that
// Chrome keeps next to chrome.exe. Everywhere else a list of conventional
// executable names is probed with --version and the first one that answers
// with a parseable version wins.
package browser
