package model

// CurrentVersion is sent in the User-Agent of every request.
var CurrentVersion string = "1.0.0"
