package saori

// Version of the SDK, embedded in generated module manifests.
const Version = "0.1.0"
