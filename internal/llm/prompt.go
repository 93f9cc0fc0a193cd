package llm

import "strings"

// SystemPrompt is sent as the system role message.
const SystemPrompt = "Tu es Parcoursup-iAdmissions, évaluateur BUT R&T objectif."

// EvaluationTemplate is the fixed instruction block prepended to every document.
const EvaluationTemplate = `**CONTEXTE PARCOURSUP-IADMISSIONS**
Tu évalues des dossiers Parcoursup pour BUT R&T (Réseaux et Télécommunications).

**FORMAT OBLIGATOIRE** - UNE SEULE LIGNE :
` + "`<numero_dossier>, <note_sur_100>, <type_bac>, <portes_ouvertes>, <lettre_ia>, <justification_courte>`" + `

**CHAMPS** :
- numero_dossier : N° Parcoursup (ex: 123456P0) ou "INTROUVABLE"
- note_sur_100 : Entier 0-100
- type_bac : "Général", "STI2D", "STL", "Autre" ou "NON_PRECISE"
- portes_ouvertes : "OUI" si JPO mentionnées, sinon "NON"
- lettre_ia : "PROBABLE_IA", "HUMAIN" ou "INCERTAIN"
- justification_courte : Max 60 mots

**BARÈME BUT R&T (100 points)** :
1. ADÉQUATION FORMATION (35 pts) : Compréhension réseaux/télécom, métiers tech, projet cohérent
2. MOTIVATION (25 pts) : JPO, recherches perso, engagement projets
3. PARCOURS SCOLAIRE (25 pts) : Cohérence, résultats maths/sciences
4. AVIS ÉTABLISSEMENT (15 pts) : Appréciations profs/chef

**CRITÈRES ÉLIMINATOIRES (Note = 0)** :
- Lettre hors-sujet/générique
- Aucune compréhension du BUT R&T
- Comportement problématique
- Absence totale de motivation

**DÉTECTION IA** : Style parfait = PROBABLE_IA, Personnel/erreurs = HUMAIN

Réponds UNIQUEMENT par la ligne de résultat.`

const documentSeparator = "\n\n--- DOSSIER ---\n"

// BuildUserPrompt appends the document text to the evaluation template.
func BuildUserPrompt(template, text string) string {
	if strings.TrimSpace(template) == "" {
		template = EvaluationTemplate
	}
	var b strings.Builder
	b.Grow(len(template) + len(documentSeparator) + len(text))
	b.WriteString(template)
	b.WriteString(documentSeparator)
	b.WriteString(text)
	return b.String()
}
