package widgets

import (
	"fmt"
	"html/template"
)

const star = "&#9733;"

func label(name string) template.HTML {
	return template.HTML("<b>" + name + "</b>") // want "преобразование в template.HTML отключает экранирование"
}

func style(width string) template.CSS {
	return template.CSS(fmt.Sprintf("width: %s", width)) // want "преобразование в template.CSS отключает экранирование"
}

func attr(v string) template.HTMLAttr {
	return template.HTMLAttr(v) // want "преобразование в template.HTMLAttr отключает экранирование"
}

func glyph() template.HTML {
	return template.HTML(star)
}

func literal() template.URL {
	return template.URL("/construction")
}

func text(v string) string {
	return template.HTMLEscapeString(v)
}
