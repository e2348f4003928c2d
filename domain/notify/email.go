package notify

import (
	"bytes"
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/utils"
	emailutils "corpus-annotator-backend/utils/email"
	"html/template"
)

var confirmEmailTemplate = template.Must(template.New("confirm").Parse(`
<h1>Annotations confirmed</h1>
<p>Line: {{.LineID}}</p>
<p>Entities: {{len .Entities}}</p>
<p>Relations: {{len .Relations}}</p>

<h2>Entities</h2>
<p>{{range .Entities}}{{.Occurrence}} ({{.Root}}) : {{.Type}}<br/>{{end}}</p>

<h2>Relations</h2>
<p>{{range .Relations}}({{.Source}})-[{{.Label}}]->({{.Target}})<br/>{{end}}</p>
`))

type confirmEmailData struct {
	LineID    string
	Entities  []corpus.Entity
	Relations []corpus.Relation
}

func renderConfirmPage(lineID string, entities []corpus.Entity, relations []corpus.Relation) (string, error) {
	var buf bytes.Buffer
	err := confirmEmailTemplate.Execute(&buf, confirmEmailData{
		LineID:    lineID,
		Entities:  entities,
		Relations: relations,
	})
	if err != nil {
		return "", utils.WrapError(err, "render confirm email fail")
	}
	return buf.String(), nil
}

// SendConfirmEmail 给标注人发送确认摘要，未配置 SMTP 或没有邮箱时跳过。
func SendConfirmEmail(email, lineID string, entities []corpus.Entity, relations []corpus.Relation) error {
	if len(email) == 0 || !emailutils.Enabled() {
		return nil
	}

	page, err := renderConfirmPage(lineID, entities, relations)
	if err != nil {
		return err
	}

	err = emailutils.SendHtml(email, "[Corpus Annotator] annotations confirmed for "+lineID, page)
	return utils.WrapErrorf(err, "send email to [%s] fail", email)
}
