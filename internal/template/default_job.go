package template

// DefaultJobTemplate is used when no template file is configured.
const DefaultJobTemplate = `apiVersion: batch/v1
kind: Job
metadata:
  name: {{ .JobName }}
  namespace: {{ .Namespace }}
  labels:
    dummysite: {{ .DummySiteLabel | quote }}
    website: {{ .WebsiteHost | quote }}
  annotations:
    dummysite.dwk/name: {{ .DummySiteName | quote }}
    dummysite.dwk/website-url: {{ .WebsiteURL | quote }}
spec:
  backoffLimit: {{ .BackoffLimit }}
  template:
    metadata:
      labels:
        dummysite: {{ .DummySiteLabel | quote }}
    spec:
      restartPolicy: Never
      containers:
        - name: {{ .ContainerName | lower | replace "." "-" | trunc 63 | trimSuffix "-" }}
          image: {{ .Image | quote }}
          env:
            - name: WEBSITE_URL
              value: {{ .WebsiteURL | quote }}
`
