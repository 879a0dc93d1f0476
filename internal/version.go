package internal

// Version is the current release of bilinguo
const Version = "0.3.0"
