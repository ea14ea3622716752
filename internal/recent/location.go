package recent

import "strings"

// locationSeparator separates a protocol such as "java:test" from the path in
// a location identifier ("java:test://Suite.testName").
const locationSeparator = "://"

// splitLocation splits an identifier into its protocol and path.
// Identifiers without a protocol return an empty protocol.
func splitLocation(id string) (protocol, path string) {
	if i := strings.Index(id, locationSeparator); i >= 0 {
		return id[:i], id[i+len(locationSeparator):]
	}
	return "", id
}

// presentation returns the human-readable label of a suite or test identifier.
func presentation(id string) string {
	_, path := splitLocation(id)
	return path
}

// suiteIDFor derives the identifier of the suite owning a test: the path is cut
// at its last separator and a test protocol is mapped to the suite protocol,
// so "java:test://Suite.testName" belongs to "java:suite://Suite".
func suiteIDFor(testID, separator string) (string, bool) {
	protocol, path := splitLocation(testID)
	i := strings.LastIndex(path, separator)
	if i <= 0 {
		return "", false
	}
	suitePath := path[:i]
	if protocol == "" {
		return suitePath, true
	}
	return suiteProtocol(protocol) + locationSeparator + suitePath, true
}

func suiteProtocol(protocol string) string {
	if strings.HasSuffix(protocol, ":test") {
		return strings.TrimSuffix(protocol, ":test") + ":suite"
	}
	if protocol == "test" {
		return "suite"
	}
	return protocol
}
