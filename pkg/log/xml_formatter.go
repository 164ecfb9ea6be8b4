package log

import (
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// XMLFormatter writes one indented element per entry, named after the level,
// with the message and every field as children in key order.
type XMLFormatter struct {
	TimestampFormat string
}

type node struct {
	XMLName  xml.Name
	Time     string `xml:"time,attr,omitempty"`
	Func     string `xml:"func,attr,omitempty"`
	File     string `xml:"file,attr,omitempty"`
	Children []node `xml:",any"`
	Text     string `xml:",chardata"`
}

func (fmter XMLFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	layout := fmter.TimestampFormat
	if layout == "" {
		layout = "2006-01-02 15:04:05.0000000"
	}
	e := node{
		XMLName: xml.Name{Local: entry.Level.String()},
		Time:    entry.Time.Format(layout),
	}
	if entry.HasCaller() {
		e.Func = entry.Caller.Function
		e.File = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}
	if entry.Message != "" {
		e.Children = append(e.Children, node{
			XMLName: xml.Name{Local: "msg"},
			Text:    entry.Message,
		})
	}
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var text string
		switch v := entry.Data[k].(type) {
		case error:
			text = v.Error()
		default:
			text = fmt.Sprintf("%v", v)
		}
		e.Children = append(e.Children, node{
			XMLName: xml.Name{Local: k},
			Text:    text,
		})
	}
	buf, err := xml.MarshalIndent(e, "", "\t")
	if err != nil {
		return nil, err
	}
	return append(buf, '\n'), nil
}
