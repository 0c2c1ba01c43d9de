package catalog

import (
	"regexp"
	"strings"
)

var (
	varNewRe       = regexp.MustCompile(`\bvar\s+(\w+)\s*=\s*new\s+([\w.]+)\s*\(`)
	typedNewRe     = regexp.MustCompile(`\b([\w.]+)\s+(\w+)\s*=\s*new\s+([\w.]+)\s*\(`)
	guidRe         = regexp.MustCompile(`Guid\.NewGuid\(|new\s+Guid\(`)
	saveChangesRe  = regexp.MustCompile(`\bSaveChanges(?:Async)?\(`)
	persistVerbRe  = regexp.MustCompile(`\b(Add|AddAsync|Insert|Update)\b`)
	publishGenRe   = regexp.MustCompile(`\.Publish<\s*([\w.]+)\s*>|\bPublish\(\s*new\s+([\w.]+)`)
	sendGenRe      = regexp.MustCompile(`\.Send<\s*([\w.]+)\s*>|\bSend\(\s*new\s+([\w.]+)`)
	publishVarRe   = regexp.MustCompile(`\bPublish\(\s*(\w+)\s*\)|\bSend\(\s*(\w+)\s*\)`)
	sendEndpointRe = regexp.MustCompile(`GetSendEndpoint\(`)
	consumerDeclRe = regexp.MustCompile(`class\s+(\w+)\s*:\s*[^{\n]*IConsumer<\s*([\w.]+)\s*>`)
	queueStepRe    = regexp.MustCompile(`(?i)Publish/Send\s+([\w.]+)\s+to queue`)
	consumerStepRe = regexp.MustCompile(`(?i)Consumer\s+([\w.]+)\s+reads queue`)
)

// inferSteps scans one endpoint method body for textual markers and
// emits an ordered, human-readable step list plus the names of the
// message types the body publishes or sends.
func inferSteps(body string) (steps, messages []string) {
	steps = []string{}
	messages = []string{}
	if body == "" {
		return steps, messages
	}

	// Track var -> constructed type so Publish(x) can name the message.
	varTypes := make(map[string]string)
	for _, m := range varNewRe.FindAllStringSubmatch(body, -1) {
		varTypes[m[1]] = m[2]
	}
	for _, m := range typedNewRe.FindAllStringSubmatch(body, -1) {
		declared, name, constructed := m[1], m[2], m[3]
		if strings.EqualFold(declared, "var") {
			varTypes[name] = constructed
		} else {
			varTypes[name] = declared
		}
	}

	if guidRe.MatchString(body) {
		steps = append(steps, "Generate OrderId")
	}
	if saveChangesRe.MatchString(body) || persistVerbRe.MatchString(body) {
		steps = append(steps, "Insert/Update DB")
	}

	addMessage := func(msg string) {
		if msg == "" {
			return
		}
		for _, existing := range messages {
			if existing == msg {
				return
			}
		}
		messages = append(messages, msg)
		steps = append(steps, "Publish/Send "+msg+" to queue")
	}

	for _, m := range publishGenRe.FindAllStringSubmatch(body, -1) {
		addMessage(firstNonEmpty(m[1], m[2]))
	}
	for _, m := range sendGenRe.FindAllStringSubmatch(body, -1) {
		addMessage(firstNonEmpty(m[1], m[2]))
	}
	for _, m := range publishVarRe.FindAllStringSubmatch(body, -1) {
		addMessage(varTypes[firstNonEmpty(m[1], m[2])])
	}

	if sendEndpointRe.MatchString(body) {
		steps = append(steps, "Send to queue endpoint")
	}
	return steps, messages
}

// buildConsumerMap scans raw file contents for classes implementing the
// generic consumer interface, mapping message type -> consumers. A
// consumer "reads DB" when its file shows persistence-access markers.
func buildConsumerMap(contents []string) map[string][]Consumer {
	consumerMap := make(map[string][]Consumer)
	for _, content := range contents {
		readsDB := strings.Contains(content, "DbContext") ||
			strings.Contains(content, "DbSet") ||
			strings.Contains(content, "SaveChanges")
		for _, m := range consumerDeclRe.FindAllStringSubmatch(content, -1) {
			name, message := m[1], m[2]
			consumerMap[message] = append(consumerMap[message], Consumer{Name: name, ReadsDB: readsDB})
		}
	}
	return consumerMap
}

// buildEndpointFlows infers the flow of every endpoint and appends the
// asynchronous consumer hops for each published message, producing one
// linear step sequence per endpoint.
func buildEndpointFlows(endpoints []Endpoint, bodies map[string]string, consumerMap map[string][]Consumer) []EndpointFlow {
	flows := make([]EndpointFlow, 0, len(endpoints))
	for _, ep := range endpoints {
		body := bodies[ep.Controller+"."+ep.Method]
		steps, messages := inferSteps(body)

		for _, message := range messages {
			for _, consumer := range consumerMap[message] {
				steps = append(steps, "Consumer "+consumer.Name+" reads queue")
				if consumer.ReadsDB {
					steps = append(steps, "Consumer "+consumer.Name+" reads DB")
				}
			}
		}

		flows = append(flows, EndpointFlow{
			Controller: ep.Controller,
			Method:     ep.Method,
			HTTPVerbs:  ep.HTTPVerbs,
			Route:      ep.Route,
			Steps:      steps,
			Messages:   messages,
		})
	}
	return flows
}

// messageNames extracts published message types back out of step text.
func messageNames(steps []string) []string {
	var names []string
	for _, step := range steps {
		m := queueStepRe.FindStringSubmatch(step)
		if m == nil {
			continue
		}
		if !containsString(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// consumerNames extracts consumer names back out of step text.
func consumerNames(steps []string) []string {
	var names []string
	for _, step := range steps {
		m := consumerStepRe.FindStringSubmatch(step)
		if m == nil {
			continue
		}
		if !containsString(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

func consumerReadsDB(consumer string, steps []string) bool {
	needle := strings.ToLower("Consumer " + consumer + " reads DB")
	for _, step := range steps {
		if strings.ToLower(step) == needle {
			return true
		}
	}
	return false
}

func hasDBActivity(steps []string) bool {
	for _, step := range steps {
		if strings.Contains(strings.ToLower(step), "db") {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
