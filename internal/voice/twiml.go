package voice

import "encoding/xml"

// Ring time instructed to the telephony provider before the dial gives up.
const dialTimeoutSeconds = 30

// recordMode starts dual-channel recording the moment the call is answered.
const recordMode = "record-from-answer-dual"

type routingDocument struct {
	XMLName xml.Name  `xml:"Response"`
	Say     string    `xml:"Say,omitempty"`
	Dial    *dialVerb `xml:"Dial,omitempty"`
}

type dialVerb struct {
	CallerID string `xml:"callerId,attr"`
	Timeout  int    `xml:"timeout,attr"`
	Record   string `xml:"record,attr"`
	Number   string `xml:"Number"`
}

func spokenErrorDocument(message string) []byte {
	return marshalDocument(routingDocument{Say: message})
}

func dialDocument(number, callerID string) []byte {
	return marshalDocument(routingDocument{
		Dial: &dialVerb{
			CallerID: callerID,
			Timeout:  dialTimeoutSeconds,
			Record:   recordMode,
			Number:   number,
		},
	})
}

func marshalDocument(doc routingDocument) []byte {
	out, err := xml.Marshal(doc)
	if err != nil {
		// Static struct shapes cannot fail to marshal; keep the provider
		// contract of a parsable document anyway.
		return []byte("<Response><Say>An application error occurred.</Say></Response>")
	}
	return append([]byte(xml.Header), out...)
}
