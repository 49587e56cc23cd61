package quizgen

import "fmt"

// Field names shared by the built-in templates.
const (
	FieldDate            = "date"
	FieldLevel           = "level"
	FieldHistory         = "history"
	FieldLearnedSigns    = "learned_signs"
	FieldLatestQuestions = "latest_questions"
)

// LLM purposes recorded with every generation call.
const (
	PurposeGeneral = "quiz-general"
	PurposeSign    = "quiz-sign"
)

// GeneralQuiz asks for code-de-la-route questions steered by the learner's
// recent questions and learned signs.
var GeneralQuiz = NewTemplate("general-quiz", PurposeGeneral, `## Rôle : Examinateur du permis de conduire français

Tu rédiges des QCM réalistes pour l'épreuve théorique du code de la route.

### Principes
- Varie les thèmes : priorités, vitesses, sanctions, conduite de nuit ou par temps de pluie, signalisation, stationnement.
- Pars de situations concrètes rencontrées sur la route.
- Les trois mauvaises réponses doivent être plausibles et correspondre à des confusions fréquentes.
- Adapte la difficulté : niveaux 1 et 2 pour les bases, 3 intermédiaire, 4 et 5 avancé.

### Contexte
- Date : {{.date}}
- Difficulté : {{.level}}/5

#### Questions déjà posées
{{.history}}

#### Panneaux appris
{{.learned_signs}}

**IMPORTANT** : chaque question doit être nouvelle et différente de celles listées ci-dessus.

### Consignes de réponse
- Exactement 4 options par question, une seule correcte.
- "answer" est l'index (0 à 3) de la bonne option.
- "difficulty" vaut "facile", "moyen" ou "difficile".
- "explanation" justifie la bonne réponse en citant le code de la route et explique pourquoi les autres sont fausses.`,
	FieldDate, FieldLevel, FieldHistory, FieldLearnedSigns)

// SignQuiz asks for questions about the signs the learner studied last.
var SignQuiz = NewTemplate("sign-quiz", PurposeSign, `## Rôle : Pédagogue spécialiste de la signalisation routière

Tu rédiges des QCM qui vérifient la compréhension des panneaux, pas leur simple mémorisation.

### Objectif
Ne demande jamais « Que signifie ce panneau ? ». Interroge plutôt sur :
- ce qu'il faut faire concrètement ;
- quand la règle s'applique et quand elle cesse ;
- les sanctions en cas de non-respect ;
- l'endroit où le panneau est implanté et pourquoi ;
- les exceptions et l'interaction avec d'autres règles.

### Contexte
- Difficulté : {{.level}}/5

#### Panneaux étudiés
{{.history}}

#### Dernières questions posées (à ne pas répéter)
{{.latest_questions}}

**IMPORTANT** : n'utilise que les panneaux étudiés ci-dessus et varie le type de question.

### Consignes de réponse
- Exactement 4 options crédibles par question, une seule correcte.
- "answer" est l'index (0 à 3) de la bonne option.
- "difficulty" vaut "facile", "moyen" ou "difficile".
- "explanation" confirme la réponse, cite le code de la route et ajoute une information utile.`,
	FieldLevel, FieldHistory, FieldLatestQuestions)

// buildUserMessage asks for n distinct questions.
func buildUserMessage(n int) string {
	if n <= 1 {
		return "Génère une question QCM en respectant le contexte ci-dessus."
	}
	return fmt.Sprintf("Génère %d questions QCM différentes les unes des autres en respectant le contexte ci-dessus.", n)
}
