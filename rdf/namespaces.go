package rdf

// Namespace is a prefix binding.
type Namespace struct {
	Prefix string
	URI    string
}

// DefaultNamespaces is the well-known vocabulary table new serializers are
// seeded with. Pass a different table with OptNamespaceTable or
// NewSerializer to change it.
var DefaultNamespaces = []Namespace{
	{"acl", "http://www.w3.org/ns/auth/acl#"},
	{"arg", "http://www.w3.org/ns/pim/arg#"},
	{"as", "https://www.w3.org/ns/activitystreams#"},
	{"cal", "http://www.w3.org/2002/12/cal/ical#"},
	{"cert", "http://www.w3.org/ns/auth/cert#"},
	{"contact", "http://www.w3.org/2000/10/swap/pim/contact#"},
	{"dc", "http://purl.org/dc/elements/1.1/"},
	{"dct", "http://purl.org/dc/terms/"},
	{"doap", "http://usefulinc.com/ns/doap#"},
	{"foaf", "http://xmlns.com/foaf/0.1/"},
	{"geo", "http://www.w3.org/2003/01/geo/wgs84_pos#"},
	{"gpx", "http://www.w3.org/ns/pim/gpx#"},
	{"http", "http://www.w3.org/2007/ont/http#"},
	{"httph", "http://www.w3.org/2007/ont/httph#"},
	{"icalTZ", "http://www.w3.org/2002/12/cal/icaltzd#"},
	{"ldp", "http://www.w3.org/ns/ldp#"},
	{"link", linkNS},
	{"log", logNS},
	{"meeting", "http://www.w3.org/ns/pim/meeting#"},
	{"mo", "http://purl.org/ontology/mo/"},
	{"owl", owlNS},
	{"pad", "http://www.w3.org/ns/pim/pad#"},
	{"patch", "http://www.w3.org/ns/pim/patch#"},
	{"prov", "http://www.w3.org/ns/prov#"},
	{"qu", "http://www.w3.org/2000/10/swap/pim/qif#"},
	{"trip", "http://www.w3.org/ns/pim/trip#"},
	{"rdf", rdfNS},
	{"rdfs", "http://www.w3.org/2000/01/rdf-schema#"},
	{"rss", "http://purl.org/rss/1.0/"},
	{"sched", "http://www.w3.org/ns/pim/schedule#"},
	{"schema", "http://schema.org/"},
	{"sioc", "http://rdfs.org/sioc/ns#"},
	{"solid", "http://www.w3.org/ns/solid/terms#"},
	{"space", "http://www.w3.org/ns/pim/space#"},
	{"stat", "http://www.w3.org/ns/posix/stat#"},
	{"ui", "http://www.w3.org/ns/ui#"},
	{"vcard", "http://www.w3.org/2006/vcard/ns#"},
	{"wf", "http://www.w3.org/2005/01/wf/flow#"},
	{"xsd", xsdNS},
	{"cco", "http://www.ontologyrepository.com/CommonCoreOntologies/"},
	{"skos", "http://www.w3.org/2004/02/skos/core#"},
	{"bookmark", "http://www.w3.org/2002/01/bookmark#"},
	{"vann", "http://purl.org/vocab/vann/"},
}
