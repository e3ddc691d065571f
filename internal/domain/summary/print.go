package summary

import (
	"html/template"
	"io"
	"time"
)

// The printable prescription keeps the hospital letterhead fixed; only the
// patient block and the prescription table vary per print.
const (
	hospitalName   = "Shyam Hospital"
	doctorName     = "Dr. Santosh Agarwal"
	doctorTitle    = "Sr. Surgeon"
	opdHours       = "OPD: 10am - 1pm | 6pm - 8pm"
	documentFooter = "Thank you for visiting. Get well soon!"
)

var printTemplate = template.Must(template.New("prescription").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Hospital}} - Prescription</title>
<style>
body { font-family: Georgia, serif; margin: 40px; color: #222; }
header { border-bottom: 2px solid #222; padding-bottom: 12px; }
header h1 { margin: 0; }
.meta { display: flex; justify-content: space-between; margin-top: 4px; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
footer { margin-top: 32px; text-align: center; font-style: italic; }
</style>
</head>
<body>
<header>
<h1>{{.Hospital}}</h1>
<div class="meta">
<span>{{.Doctor}} &ndash; {{.DoctorTitle}}</span>
<span>{{.OPDHours}}</span>
</div>
</header>

<section>
<p><strong>Patient:</strong> {{.Patient.Name}} &nbsp; <strong>Phone:</strong> {{.Patient.Phone}}{{if .Patient.Gender}} &nbsp; <strong>Gender:</strong> {{.Patient.Gender}}{{end}}</p>
{{if or .Patient.Weight .Patient.BP .Patient.Temperature .Patient.SpO2 .Patient.BloodSugar}}
<p>
{{if .Patient.Weight}}<strong>Weight:</strong> {{.Patient.Weight}} &nbsp; {{end}}
{{if .Patient.BP}}<strong>BP:</strong> {{.Patient.BP}} &nbsp; {{end}}
{{if .Patient.Temperature}}<strong>Temp:</strong> {{.Patient.Temperature}} &nbsp; {{end}}
{{if .Patient.SpO2}}<strong>SpO2:</strong> {{.Patient.SpO2}} &nbsp; {{end}}
{{if .Patient.BloodSugar}}<strong>Blood Sugar:</strong> {{.Patient.BloodSugar}}{{end}}
</p>
{{end}}
<p><strong>Date:</strong> {{.Date}}</p>
</section>

{{if .Patient.Medicines}}
<table>
<tr><th>#</th><th>Medicine</th><th>Type</th><th>Days</th><th>Dose</th></tr>
{{range $i, $m := .Patient.Medicines}}
<tr><td>{{inc $i}}</td><td>{{$m.MedicineName}}</td><td>{{$m.MedicineType}}</td><td>{{$m.Days}}</td><td>{{$m.DoseText}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Patient.Tests}}
<section>
<p><strong>Advised Tests:</strong></p>
<ul>
{{range .Patient.Tests}}<li>{{.}}</li>
{{end}}</ul>
</section>
{{end}}

<footer>{{.Footer}}</footer>
</body>
</html>
`))

type printData struct {
	Hospital    string
	Doctor      string
	DoctorTitle string
	OPDHours    string
	Footer      string
	Date        string
	Patient     Summary
}

// RenderDocument writes the printable prescription for the patient summary.
func RenderDocument(w io.Writer, s Summary, now time.Time) error {
	return printTemplate.Execute(w, printData{
		Hospital:    hospitalName,
		Doctor:      doctorName,
		DoctorTitle: doctorTitle,
		OPDHours:    opdHours,
		Footer:      documentFooter,
		Date:        now.Format("02 Jan 2006"),
		Patient:     s,
	})
}
